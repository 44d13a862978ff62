/*
Package logging emits diagnostic lines from Faasm WebAssembly functions.

Each message is a single line on standard output shaped as {"info":<message>}
or {"err":<message>}. The message is interpolated verbatim, so the line is a
shape, not validated JSON.

Fatal writes an err line and ends the process with exit status 0, which the
host reads as a handled failure rather than a crash. Library packages in this
SDK return errors instead of calling Fatal; the entry point of a function
decides when to stop, usually through Check.
*/
package logging
