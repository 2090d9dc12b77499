package ussd

import "github.com/alerta-nampula/alerta/internal/models"

// medicalMenu handles branch 0.
func (it *Interpreter) medicalMenu(path []string, phone string) Screen {
	if len(path) == 1 {
		return con("Apoio medico\n" +
			"1. Unidades de saude\n" +
			"2. Pedir ambulancia\n" +
			"3. Zonas seguras\n" +
			"4. Primeiros socorros\n" +
			"0. Voltar")
	}

	switch path[1] {
	case "0":
		return it.rootMenu()
	case "1":
		return end("Unidades de saude\n" +
			"Hospital Central de Nampula - 24h\n" +
			"Centro de Saude 25 de Setembro - 7h-19h\n" +
			"Centro de Saude de Namicopo - 7h-17h")
	case "2":
		id, err := it.submitHelp(phone, models.HelpAmbulance, "Pedido de ambulancia via USSD")
		if err != nil {
			return it.helpFailure()
		}
		return end("Pedido #%d registado.\nLigue %s para confirmar a ambulancia.", id, it.site.MedicalLine)
	case "3":
		zones, err := it.store.ActiveZones()
		if err != nil {
			return end("Servico indisponivel. Tente mais tarde.")
		}
		return end("%s", zoneListBody(zones, zoneCapacity))
	case "4":
		return end("Primeiros socorros\n" +
			"- Mantenha a vitima calma e aquecida\n" +
			"- Pressione feridas com pano limpo\n" +
			"- Nao mova vitimas com suspeita de fractura\n" +
			"- Em afogamento, deite a vitima de lado")
	}
	return invalidOption()
}
