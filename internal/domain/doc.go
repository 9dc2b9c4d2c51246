// Package domain contains the core business entities, value objects, and
// domain logic of the task manager: tasks, their assignment deltas, the
// notifications produced by assignments, and the users they refer to. It is
// independent of any specific infrastructure or delivery mechanism.
package domain
