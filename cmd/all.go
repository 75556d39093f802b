package cmd

import (
	_ "tunnel-keeper/cmd/install"
	_ "tunnel-keeper/cmd/root"
	_ "tunnel-keeper/cmd/server"
	_ "tunnel-keeper/cmd/status"
	_ "tunnel-keeper/cmd/stop"
)
