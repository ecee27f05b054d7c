// Package mailsift crawls a website for contact email addresses.
// Starting from a seed URL it discovers same-origin pages with a
// bounded-concurrency frontier scheduler, extracts email addresses
// (including common human-obfuscated spellings like "foo [at] bar
// [dot] com"), and streams each find with its source page URL and
// title.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., http/,
// goquery/, sqlite/).
package mailsift
