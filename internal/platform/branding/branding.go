// Package branding centralizes lodge identity strings shared across pages.
package branding

// AppName is the full lodge name shown in page titles and the hero section.
const AppName = "Loja Maçônica Luz e Progresso"

// ShortName is the compact brand used in the navigation bar.
const ShortName = "Loja Maçônica"
