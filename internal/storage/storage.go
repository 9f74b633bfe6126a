// Package storage defines the typed repositories backing the portal.
//
// Each entity gets an explicit record shape and a narrow interface with named
// query methods; callers never see SQL or a generic query builder.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound reports that a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Event is a lodge calendar entry shown on the public agenda.
type Event struct {
	ID          string
	Title       string
	Description string
	EventDate   time.Time
	Location    string
	ImageURL    string
	IsPublic    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Activity is a philanthropic or cultural action run by the lodge.
type Activity struct {
	ID            string
	Title         string
	Category      string
	Description   string
	Content       string
	EventDate     *time.Time
	ImageURL      string
	GalleryImages []string
	Partnerships  []string
	Results       string
	IsFeatured    bool
	IsPublic      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Article is an editorial piece authored by a member profile.
type Article struct {
	ID          string
	Title       string
	Content     string
	Excerpt     string
	ImageURL    string
	AuthorID    string
	IsPublic    bool
	IsPublished bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Officer is a current lodge officer shown on the about page.
type Officer struct {
	ID        string
	Name      string
	Position  string
	Bio       string
	PhotoURL  string
	SortOrder int
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LodgeInfo is the single institutional record rendered across pages.
type LodgeInfo struct {
	ID           string
	Name         string
	Subtitle     string
	Description  string
	Mission      string
	Vision       string
	Values       string
	Address      string
	Phone        string
	Email        string
	Website      string
	LogoURL      string
	HeroImageURL string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ContactMessage is a visitor message submitted through the contact form.
type ContactMessage struct {
	ID        string
	Name      string
	Email     string
	Subject   string
	Message   string
	IsRead    bool
	CreatedAt time.Time
}

// EducationalContent is a study-section entry grouped by category.
type EducationalContent struct {
	ID         string
	Title      string
	Category   string
	Content    string
	Author     string
	SortOrder  int
	IsFeatured bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// InternalDocument is a members-only document reference.
type InternalDocument struct {
	ID          string
	Title       string
	Category    string
	Description string
	FileURL     string
	AccessLevel string
	UploadedBy  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AgendaEntry is a reserved (members-only) agenda item.
type AgendaEntry struct {
	ID          string
	Title       string
	EventType   string
	EventDate   time.Time
	Description string
	Location    string
	AccessLevel string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MemberMessage is a message between members, optionally broadcast.
type MemberMessage struct {
	ID          string
	SenderID    string
	RecipientID string
	Subject     string
	Content     string
	IsBroadcast bool
	IsRead      bool
	CreatedAt   time.Time
}

// WorshipfulMaster is a past or current master in the lodge gallery.
type WorshipfulMaster struct {
	ID               string
	Name             string
	InstallationYear int
	TermStartDate    *time.Time
	TermEndDate      *time.Time
	Bio              string
	Achievements     string
	PhotoURL         string
	SortOrder        int
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// StudyWork is an uploaded study paper shared between members.
type StudyWork struct {
	ID          string
	BrotherName string
	WorkTitle   string
	FilePath    string
	FileSize    int64
	Description string
	Category    string
	IsApproved  bool
	UploadedBy  string
	UploadDate  time.Time
}

// EventStore reads and mutates lodge events.
type EventStore interface {
	ListPublicEvents(ctx context.Context) ([]Event, error)
	ListUpcomingPublicEvents(ctx context.Context, limit int) ([]Event, error)
	ListAllEvents(ctx context.Context) ([]Event, error)
	GetEvent(ctx context.Context, id string) (Event, error)
	InsertEvent(ctx context.Context, event Event) (Event, error)
	UpdateEvent(ctx context.Context, event Event) error
	DeleteEvent(ctx context.Context, id string) error
}

// ActivityStore reads and mutates lodge activities.
type ActivityStore interface {
	ListPublicActivities(ctx context.Context) ([]Activity, error)
	ListFeaturedActivities(ctx context.Context, limit int) ([]Activity, error)
	ListAllActivities(ctx context.Context) ([]Activity, error)
	GetActivity(ctx context.Context, id string) (Activity, error)
	InsertActivity(ctx context.Context, activity Activity) (Activity, error)
	UpdateActivity(ctx context.Context, activity Activity) error
	DeleteActivity(ctx context.Context, id string) error
}

// ArticleStore reads published editorial pieces.
type ArticleStore interface {
	ListPublishedArticles(ctx context.Context, limit int) ([]Article, error)
}

// OfficerStore reads the officer roster.
type OfficerStore interface {
	ListActiveOfficers(ctx context.Context) ([]Officer, error)
}

// LodgeInfoStore reads the institutional record.
type LodgeInfoStore interface {
	GetLodgeInfo(ctx context.Context) (LodgeInfo, error)
}

// ContactMessageStore persists visitor messages.
type ContactMessageStore interface {
	InsertContactMessage(ctx context.Context, msg ContactMessage) (ContactMessage, error)
	ListContactMessages(ctx context.Context) ([]ContactMessage, error)
	MarkContactMessageRead(ctx context.Context, id string) error
}

// EducationStore reads study-section content.
type EducationStore interface {
	ListEducationalContent(ctx context.Context) ([]EducationalContent, error)
}

// DocumentStore reads members-only documents.
type DocumentStore interface {
	ListInternalDocuments(ctx context.Context) ([]InternalDocument, error)
}

// AgendaStore reads the reserved agenda.
type AgendaStore interface {
	ListAgendaEntries(ctx context.Context) ([]AgendaEntry, error)
}

// MemberMessageStore persists messages between members.
type MemberMessageStore interface {
	ListMessagesForUser(ctx context.Context, userID string) ([]MemberMessage, error)
	InsertMemberMessage(ctx context.Context, msg MemberMessage) (MemberMessage, error)
}

// MasterStore reads the worshipful masters gallery.
type MasterStore interface {
	ListWorshipfulMasters(ctx context.Context) ([]WorshipfulMaster, error)
}

// StudyWorkStore persists uploaded study papers.
type StudyWorkStore interface {
	ListStudyWorks(ctx context.Context) ([]StudyWork, error)
	GetStudyWork(ctx context.Context, id string) (StudyWork, error)
	InsertStudyWork(ctx context.Context, work StudyWork) (StudyWork, error)
}
