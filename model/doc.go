// Package model defines jobs, workers and completion records shared by the
// balancer, the simulator and the job registry.
package model
