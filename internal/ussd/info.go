package ussd

// infoMenu handles branch 4. Every leaf is terminal; alerts browsed from
// here cannot be drilled into for detail.
func (it *Interpreter) infoMenu(path []string) Screen {
	if len(path) == 1 {
		return con("Informacao\n" +
			"1. Alertas activos\n" +
			"2. Numeros de emergencia\n" +
			"3. Conselhos de seguranca\n" +
			"0. Voltar")
	}

	switch path[1] {
	case "0":
		return it.rootMenu()
	case "1":
		alerts, err := it.store.ActiveAlerts(alertListCap)
		if err != nil {
			return end("Servico indisponivel. Tente mais tarde.")
		}
		if len(alerts) == 0 {
			return end("Sem alertas activos de momento.")
		}
		return end("%s", alertListBody(alerts))
	case "2":
		return end("Numeros de emergencia\n"+
			"Linha de emergencia: %s\n"+
			"Emergencia medica: %s\n"+
			"INGD: 1443", it.site.EmergencyLine, it.site.MedicalLine)
	case "3":
		return end("Conselhos de seguranca\n" +
			"- Afaste-se de zonas baixas durante chuvas fortes\n" +
			"- Nao atravesse aguas em movimento\n" +
			"- Guarde documentos em saco plastico\n" +
			"- Siga as indicacoes das autoridades")
	}
	return invalidOption()
}
