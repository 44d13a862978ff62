/*
Package invocation reads the input and sets the output of the current Faasm
function invocation.

GetInput asks the host for the input size with a zero-capacity read, then
allocates exactly that many bytes and fetches them in a second call. Empty
input costs a single host call.
*/
package invocation
