package platform

func newInhibitor() Inhibitor {
	return commandInhibitor{
		name: "systemd-inhibit",
		args: func(reason string) []string {
			return []string{"--what=idle:sleep", "--who=talkwatch", "--why=" + reason, "--mode=block", "sleep", "infinity"}
		},
	}
}
