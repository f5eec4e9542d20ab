package platform

func newInhibitor() Inhibitor {
	return commandInhibitor{
		name: "caffeinate",
		args: func(string) []string {
			return []string{"-d", "-i"}
		},
	}
}
