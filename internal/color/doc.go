// Package color holds the lipgloss theme of the stlcctl form.
//
// Styles are package-level values so every view shares one palette.
// Initialize picks the dark or light variant of the adaptive colors; call
// it once before the program starts.
package color
