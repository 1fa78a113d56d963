// Package fixtures creates goal records for tests through any repository.
//
//	f := fixtures.New(repo)
//	goal := f.CreateGoal(t, "user-a", fixtures.WithText("Learn X"))
package fixtures
