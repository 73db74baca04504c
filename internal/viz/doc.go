// Package viz renders built models for the terminal.
//
//   - [DescriptionTable]: every symbol of a model with its owner and description
//   - [SystemSummary]: the bodies, joints, coordinates, loads and constraints
//     contributed to the system
//
// Output is styled with lipgloss and degrades to plain text when stdout is
// not a terminal. Themes are selected by name with [GetTheme].
package viz
