// Package plotting renders the study figures with gonum/plot.
//
// Figures follow a single explicit Style (palette, grid background, font
// sizes, panel size and output format) carried by the Renderer; there is no
// package-level state. Each Renderer method builds one figure and, when the
// Save argument asks for it, writes <Root>/<Dir>/<Name>.<format>.
package plotting
