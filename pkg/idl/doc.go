// Package idl declares how GitHub resources are shaped.
//
// A Schema groups attribute names by decoding kind (string, integer, boolean,
// date, nested object, nested collection) and binds them to a concrete model
// type. Models expose their attributes through presence-tracking fields
// (Opt and Collection) so that a field missing from a server response stays
// distinguishable from one that was sent as JSON null.
package idl
