// Package viz renders solved wavefunctions in the terminal.
//
// [Chart] draws one or more states with asciigraph. [Browser] is a Bubble Tea
// model for stepping through the states of a stored run:
//
//	j/k   - select state
//	o     - overlay all states
//	t     - cycle color themes
//	q     - quit
package viz
