// Package quantum evolves superpositions of quantum harmonic
// oscillator eigenstates on a uniform spatial grid.
//
// Everything is expressed in dimensionless oscillator units
// (hbar = m = omega = 1): eigenstate n has energy n + 1/2, and a
// superposition evolves by attaching the phase exp(-i E_n t) to each
// coefficient. The time dependence is therefore exact; no PDE
// stepping is involved.
package quantum
