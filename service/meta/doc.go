// Package meta loads YAML or JSON documents (configuration, workloads) from
// any storage supported by viant/afs, expanding ${env.KEY} references before
// decoding.
package meta
