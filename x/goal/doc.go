/*
Package goal implements savings goals.

A goal is created by a user with a target amount and a deadline. Anybody can
contribute to a goal until its deadline passes. Every contribution that
brings the balance to or above the target emits a GoalAchieved event, so the
achievement is reported again for each contribution made after the target
was reached.

Goal ids are provided by an IDSource. The default source, GoalCounter, is a
sequence kept in the same store as the goals and incremented within the
transaction that creates the goal.
*/
package goal
