// Package asciiart prints the astrogaia-setup banner.
package asciiart

import (
	"io"

	fcolor "github.com/fatih/color"
)

// logo is the banner shown by the bare root command.
const logo = `
   *     .   _    ✦         *        _    .    *
    __ _ __| |_ _ _ ___  __ _ __ _(_)__ _
   / _' (_-<  _| '_/ _ \/ _' / _' | / _' |    ✦
   \__,_/__/\__|_| \___/\__, \__,_|_\__,_|
  ✦      *      .       |___/   setup    *
`

// PrintAstrogaiaLogo writes the banner and tagline to the writer.
func PrintAstrogaiaLogo(writer io.Writer) {
	cyan := fcolor.New(fcolor.FgCyan)

	_, _ = cyan.Fprint(writer, logo)
	_, _ = fcolor.New(fcolor.Reset, fcolor.Bold).
		Fprintln(writer, "💫 Bootstrapper for the Gaia DR3 astrogaia tool")
}
