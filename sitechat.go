// Package sitechat provides a local tool for chatting with website content.
// It crawls a site breadth-first with robots.txt politeness, normalizes and
// extracts textual content, embeds it into an on-disk vector store, and
// answers natural language questions grounded in the retrieved content.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, ollama/).
package sitechat
