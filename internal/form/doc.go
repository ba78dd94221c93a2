// Package form discovers the look-up form on a fetched page and turns it into
// an immutable template that can be bound to one query at a time.
//
// Parse reads the first <form> on the page and records its action, method and
// the controls a browser would submit. Bind copies those controls into a new
// Submission for each query, so a template can be reused across a whole batch
// without any query seeing another query's values.
package form
