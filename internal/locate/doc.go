// Package locate turns a user supplied URL into either a single video with
// its streams or the entries of a playlist.
//
// Resolution is an ordered chain of strategies sharing one Attempt. Each
// strategy either resolves the URL or passes it on; the first resolved
// Location wins.
package locate
