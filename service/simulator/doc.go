// Package simulator replays every worker's assignment list and records when
// each job finishes.  A job that is still pending when another one arrives is
// paused with its remaining work; pending jobs resume in order of remaining
// work plus arrival time, ties going to the lower job id.
package simulator
