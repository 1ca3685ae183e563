// Package cmd assembles the astrogaia-setup command tree.
package cmd
