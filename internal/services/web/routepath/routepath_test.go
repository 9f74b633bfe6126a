package routepath

import "testing"

func TestCommissionEventPathsEscapeSegments(t *testing.T) {
	got := CommissionEventUpdatePath("id with space")
	want := "/commission/events/id%20with%20space/update"
	if got != want {
		t.Fatalf("CommissionEventUpdatePath = %q, want %q", got, want)
	}
}

func TestSecretaryReadPath(t *testing.T) {
	got := CommissionSecretaryReadPath("msg-1")
	if got != "/commission/secretary/msg-1/read" {
		t.Fatalf("CommissionSecretaryReadPath = %q", got)
	}
}

func TestStudyDownloadPathEncodesToken(t *testing.T) {
	got := MembersStudyDownloadPath("a+b/c")
	if got != "/members/study/download?token=a%2Bb%2Fc" {
		t.Fatalf("MembersStudyDownloadPath = %q", got)
	}
}
