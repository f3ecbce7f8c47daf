package ats

import "fmt"

// Notes accumulates the four message lists in evaluation order.
type Notes struct {
	Feedback       []string
	Suggestions    []string
	Warnings       []string
	CriticalIssues []string
}

func (n *Notes) good(format string, args ...any) {
	n.Feedback = append(n.Feedback, sprintf(format, args...))
}

func (n *Notes) suggest(format string, args ...any) {
	n.Suggestions = append(n.Suggestions, sprintf(format, args...))
}

func (n *Notes) warn(format string, args ...any) {
	n.Warnings = append(n.Warnings, sprintf(format, args...))
}

func (n *Notes) critical(format string, args ...any) {
	n.CriticalIssues = append(n.CriticalIssues, sprintf(format, args...))
}

// merge appends other's messages after n's, keeping both orders.
func (n *Notes) merge(other Notes) {
	n.Feedback = append(n.Feedback, other.Feedback...)
	n.Suggestions = append(n.Suggestions, other.Suggestions...)
	n.Warnings = append(n.Warnings, other.Warnings...)
	n.CriticalIssues = append(n.CriticalIssues, other.CriticalIssues...)
}

// Len is the total number of messages.
func (n Notes) Len() int {
	return len(n.Feedback) + len(n.Suggestions) + len(n.Warnings) + len(n.CriticalIssues)
}

func sprintf(format string, args ...any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// categoryResult is what each category rule returns: points plus messages.
type categoryResult struct {
	points int
	notes  Notes
}

// take merges the category's messages and returns its points bounded to [0, limit].
func (n *Notes) take(res categoryResult, limit int) int {
	n.merge(res.notes)
	return clamp(res.points, 0, limit)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// nonNil turns a nil slice into an empty one so reports serialise as [].
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
