// Package scenecraft draws procedural scene images from a text prompt and a
// palette, removes flat backgrounds from photos, and renders deterministic
// gallery placeholders.
//
// Every entry point degrades instead of failing: bad palette entries fall
// back to defaults, undecodable uploads come back unchanged, and the package
// stays silent unless SetLogger is called.
package scenecraft
