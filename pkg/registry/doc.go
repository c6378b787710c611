// Package registry maps node-kind tags to their constructors.
//
// Markup parsers only know a kind by the element or block name they read;
// the Registry turns that name into a freshly constructed node. Node kinds
// are contributed by Modules. After registration, ValidateRegistry checks
// that every kind's typed socket fields and its declared sockets agree, so
// a renamed socket cannot silently break markup or generated code.
package registry
