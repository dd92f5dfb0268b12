// Package convention implements the OCA commit message convention:
//
//	[<type>] <module>: <subject>
//
//	<body>
//
// It declares the questions a host asks, builds messages from the answers,
// recognizes conforming messages in history and enriches changelog entries
// with a short revision reference. A Grammar is built once with NewGrammar
// and passed to every component.
package convention
