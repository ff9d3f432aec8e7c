package scheduler

// Package scheduler implements the day-ahead placement heuristic. It assigns
// each controllable load a contiguous slot range maximizing overlap with the
// forecast solar production, respecting per-device windows, deadlines and
// feeder occupancy. One call to Plan is one complete, deterministic run.
