// Package workload reads job lists.  Structured documents (YAML or JSON) hold
// either a list of jobs or an object with a "jobs" list; any other content is
// read as whitespace separated "id size arrival" triples where '#' starts a
// comment running to the end of the line.
package workload
