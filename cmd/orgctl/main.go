// Command orgctl herramientas de mantenimiento del organigrama: volcado de aristas,
// matriz de permisos y migraciones.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
