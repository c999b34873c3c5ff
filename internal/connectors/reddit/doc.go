// Package reddit implements driven.PostSource over reddit's public
// listing endpoints (/r/{sub}/new.json). No authentication is used, so
// requests are throttled to stay clear of the anonymous rate limit.
package reddit
