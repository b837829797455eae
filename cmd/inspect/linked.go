package main

// Descriptor packages register themselves with registry.Default from init.
import _ "github.com/wippyai/introspect/examples/cats/catinfo"
