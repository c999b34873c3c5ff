// Package connectors groups the driven.PostSource implementations.
// Each subpackage knows how to fetch posts from one kind of origin:
// reddit's public listings or a CSV export of them.
package connectors
