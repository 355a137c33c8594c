// Package scheduler runs the three periodic producers of the async layer:
// the stats recompute safety net, daily housekeeping (with a weekly
// extension on Sundays), and the frequent read-only health check. Each
// firing runs inside its own recovery boundary; an error or panic in one
// tick is logged and the next scheduled firing still occurs.
package scheduler
