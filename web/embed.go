package web

import "embed"

// TemplatesFS embeds the HTML pages rendered by gin.
//
//go:embed templates/*.html
var TemplatesFS embed.FS

// StaticFS embeds scripts and styles served under /static.
//
//go:embed static/*
var StaticFS embed.FS
