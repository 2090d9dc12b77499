package ussd

import (
	"fmt"
	"strings"

	"github.com/alerta-nampula/alerta/internal/models"
)

type zoneListMode int

const (
	zoneCapacity zoneListMode = iota
	zoneResources
)

// zoneListBody renders all active zones, one per line. Shared with the
// Medical branch, which lists zones with capacity inline.
func zoneListBody(zones []models.SafeZone, mode zoneListMode) string {
	if len(zones) == 0 {
		return "Nenhuma zona segura registada."
	}
	var b strings.Builder
	b.WriteString("Zonas seguras:")
	for _, z := range zones {
		if mode == zoneCapacity {
			fmt.Fprintf(&b, "\n%s - capacidade %d", z.Name, z.Capacity)
		} else {
			fmt.Fprintf(&b, "\n%s - %s", z.Name, z.Resources)
		}
	}
	return b.String()
}

// zonesMenu handles branch 2.
func (it *Interpreter) zonesMenu(path []string) Screen {
	if len(path) == 1 {
		return con("Zonas seguras\n" +
			"1. Nomes e capacidade\n" +
			"2. Nomes e recursos\n" +
			"0. Voltar")
	}

	switch path[1] {
	case "0":
		return it.rootMenu()
	case "1", "2":
		zones, err := it.store.ActiveZones()
		if err != nil {
			return end("Servico indisponivel. Tente mais tarde.")
		}
		mode := zoneCapacity
		if path[1] == "2" {
			mode = zoneResources
		}
		return end("%s", zoneListBody(zones, mode))
	}
	return invalidOption()
}
