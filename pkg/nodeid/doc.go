/*
Package nodeid parses and formats socket endpoint references used by the
markup dialects to describe connections.

A reference names a node and one of its sockets. The HCL dialect writes it
dot-separated, `emit.emission`; the XML dialect writes it space-separated,
`emit emission`. Node names may themselves contain dots or spaces, so the
socket is always the last segment.
*/
package nodeid
