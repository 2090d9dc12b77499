package ussd

import (
	"fmt"
	"strings"

	"github.com/alerta-nampula/alerta/internal/models"
)

// helpCategoryFor maps a menu token to a help category. The mapping is
// closed: anything outside 1-4 is an invalid option.
func helpCategoryFor(token string) (models.HelpCategory, bool) {
	switch token {
	case "1":
		return models.HelpRescue, true
	case "2":
		return models.HelpWater, true
	case "3":
		return models.HelpFood, true
	case "4":
		return models.HelpMedicine, true
	}
	return "", false
}

// submitHelp persists a help request and returns its identifier. The store
// takes care of forwarding urgent categories to the operators.
func (it *Interpreter) submitHelp(phone string, category models.HelpCategory, description string) (uint, error) {
	req := &models.HelpRequest{Phone: phone, Category: category, Description: description}
	if err := it.store.CreateHelpRequest(req); err != nil {
		return 0, err
	}
	return req.ID, nil
}

func (it *Interpreter) helpFailure() Screen {
	return end("Nao foi possivel registar o pedido. Ligue directamente para %s.", it.site.EmergencyLine)
}

// helpMenu handles branch 3, the two-stage help-request capture.
func (it *Interpreter) helpMenu(path []string, phone string) Screen {
	if len(path) == 1 {
		return con("Pedir ajuda\n" +
			"1. Resgate urgente\n" +
			"2. Agua\n" +
			"3. Comida\n" +
			"4. Medicamentos\n" +
			"0. Voltar")
	}

	if path[1] == "0" {
		return it.rootMenu()
	}
	category, ok := helpCategoryFor(path[1])
	if !ok {
		return invalidOption()
	}

	switch category {
	case models.HelpRescue:
		id, err := it.submitHelp(phone, category, "Resgate urgente via USSD")
		if err != nil {
			return it.helpFailure()
		}
		return end("Pedido #%d registado. As equipas de resgate foram alertadas.\nLigue %s para a linha de emergencia.", id, it.site.EmergencyLine)

	case models.HelpWater, models.HelpFood:
		if len(path) == 2 {
			return con("Quantas pessoas precisam?")
		}
		// The count token is kept verbatim; operators read it as text.
		noun := "Agua"
		if category == models.HelpFood {
			noun = "Comida"
		}
		id, err := it.submitHelp(phone, category, fmt.Sprintf("%s para %s pessoas", noun, path[2]))
		if err != nil {
			return it.helpFailure()
		}
		return end("Pedido #%d registado. Uma equipa entrara em contacto.", id)

	case models.HelpMedicine:
		if len(path) == 2 {
			return con("Qual medicamento ou emergencia?")
		}
		detail := strings.TrimSpace(path[2])
		if detail == "" {
			detail = "nao especificado"
		}
		id, err := it.submitHelp(phone, category, "Medicamento: "+detail)
		if err != nil {
			return it.helpFailure()
		}
		return end("Pedido #%d registado.\nPara emergencias medicas ligue %s.", id, it.site.MedicalLine)
	}
	return invalidOption()
}
