// Package all подключает все встроенные плагины калькулятора.
package all

import (
	_ "gocalc/internal/plugins/addition"
	_ "gocalc/internal/plugins/clearhistory"
	_ "gocalc/internal/plugins/division"
	_ "gocalc/internal/plugins/exit"
	_ "gocalc/internal/plugins/menu"
	_ "gocalc/internal/plugins/multiplication"
	_ "gocalc/internal/plugins/showhistory"
	_ "gocalc/internal/plugins/subtraction"
)
