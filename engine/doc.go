// Package engine parses mustache templates and renders them by driving an
// [Itf] capability set.
//
// The engine knows nothing about the data being rendered. Every name lookup,
// section entry, iteration step and scalar conversion is delegated to the
// Itf, which owns the data and its scope stack. Partials are resolved through
// a [PartialFunc] passed with each render, so a parsed [Template] can be
// rendered by many goroutines at once.
//
// The grammar is mustache with the mustach extensions selected by [Flags]:
//
//	{{name}}  {{{name}}}  {{&name}}       variables, escaped or raw
//	{{#name}} {{^name}} {{/name}}        sections and inverted sections
//	{{!text}} {{>name}} {{=<% %>=}}      comments, partials, delimiters
//	{{#k=v}} {{#k=!v}} {{#k>v}} ...     comparison sections (Equal, Compare)
//	{{#k.*}}{{*}}: {{.}}{{/k.*}}        key-value iteration (ObjectIter)
//	{{:#literal}}                       names with leading sigils (Colon)
//
// Failures are reported as *[Error] carrying a [Status] that mirrors the
// mustach status codes. Errors returned by the Itf propagate unchanged.
package engine
