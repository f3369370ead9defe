package cmd

func init() {
	RegisterCommand(&Command{
		Name:  "version",
		Short: "Show version information",
		Long:  "Print the carousel CLI version and build time.",
		Usage: "carousel version",
		Run: func(args []string) error {
			printVersion()
			return nil
		},
	})
}
