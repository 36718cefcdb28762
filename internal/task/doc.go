// Package task provides goroutine lifecycle supervision for the Smart Room
// components.
//
// Each component (sensor, actuator engine, aggregator) runs as one named
// task with a shared cancellation context. Shutdown is cooperative with a
// bounded wait: tasks that miss the deadline are logged and abandoned.
//
//	sup := task.NewSupervisor()
//	sup.Add("engine:smart_light", engine.Run)
//	sup.Start(ctx)
//	...
//	sup.Stop(5 * time.Second)
package task
