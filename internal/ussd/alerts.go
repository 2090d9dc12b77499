package ussd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alerta-nampula/alerta/internal/models"
)

// alertListCap is how many alerts a handset screen shows at most.
const alertListCap = 3

// alertBodyLimit is the detail-screen truncation threshold, in runes.
const alertBodyLimit = 120

func alertGlyph(c models.AlertCategory) string {
	switch c {
	case models.AlertUrgent:
		return "[!]"
	case models.AlertAttention:
		return "[*]"
	}
	return "[i]"
}

func alertLabel(c models.AlertCategory) string {
	switch c {
	case models.AlertUrgent:
		return "URGENTE"
	case models.AlertAttention:
		return "ATENCAO"
	}
	return "INFORMATIVO"
}

// alertListBody renders the numbered top-3 list shared by the Alerts and
// Information branches.
func alertListBody(alerts []models.Alert) string {
	var b strings.Builder
	b.WriteString("Alertas activos:")
	for i, a := range alerts {
		fmt.Fprintf(&b, "\n%d. %s %s", i+1, alertGlyph(a.Category), a.Title)
	}
	return b.String()
}

// alertsMenu handles branch 1. Length-1 paths list the top alerts; the next
// token selects one for detail. The list query runs fresh on both round-trips,
// so the index resolves against current data, not what the caller saw.
func (it *Interpreter) alertsMenu(path []string) Screen {
	if len(path) >= 2 && path[1] == "0" {
		return it.rootMenu()
	}

	alerts, err := it.store.ActiveAlerts(alertListCap)
	if err != nil {
		return end("Servico indisponivel. Tente mais tarde.")
	}
	if len(alerts) == 0 {
		return end("Sem alertas activos de momento.")
	}

	if len(path) == 1 {
		return con("%s\nDigite o numero para detalhes ou 0 para voltar", alertListBody(alerts))
	}

	idx, err := strconv.Atoi(path[1])
	if err != nil || idx < 1 || idx > len(alerts) {
		return end("Alerta nao encontrado.")
	}

	a := alerts[idx-1]
	return end("%s: %s\n%s", alertLabel(a.Category), a.Title, truncate(a.Body, alertBodyLimit))
}

// truncate caps s at limit runes, appending an ellipsis when it was longer.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
