// Package notify renders user-facing status messages for the installer.
//
// Messages follow the marker conventions of the astrogaia tooling: "[+]" for
// success, "[-]" for errors, "[!]" for warnings and "[*]" for activity lines.
// Stage titles are bold lines prefixed with an emoji; StageSeparatingWriter
// inserts blank lines between stages automatically.
package notify
