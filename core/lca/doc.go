// Package lca implements the cradle-to-grave emissions model for
// biodiesel produced from waste cooking oil, normalized to a
// functional unit of 1 MJ. Compute maps an Inventory and a FactorSet
// to per-stage emissions; Contributions, Sensitivity and CompareDiesel
// derive the interpretation figures from a result. All functions are
// pure and validate their inputs once at the boundary.
package lca
