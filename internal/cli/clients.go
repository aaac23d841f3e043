package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/martijn/clientsapi/internal/core/domain"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	clientNom       string
	clientPrenom    string
	clientTelephone string
	clientEmail     string
	clientPoints    int
	deleteConfirmed bool
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Manage client records",
	Long:  "Create, inspect, update and delete client records directly in the configured store",
}

var clientsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new client",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close(cmd.Context())

		var points *int
		if cmd.Flags().Changed("points") {
			points = &clientPoints
		}

		client := domain.NewClient(clientNom, clientPrenom, clientTelephone, clientEmail, points)
		if err := services.ClientService.CreateClient(cmd.Context(), client); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Client created successfully")
		fmt.Fprintf(cmd.OutOrStdout(), "Client ID: %s\n", client.ID)
		return nil
	},
}

var clientsGetCmd = &cobra.Command{
	Use:   "get <client-id>",
	Short: "Show a client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close(cmd.Context())

		client, err := services.ClientService.GetClient(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		printClients(cmd.OutOrStdout(), []*domain.Client{client})
		return nil
	},
}

var clientsUpdateCmd = &cobra.Command{
	Use:   "update <client-id>",
	Short: "Update client fields",
	Long:  "Update the fields given as flags; other fields keep their value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var patch domain.ClientPatch
		flags := cmd.Flags()
		if flags.Changed("nom") {
			patch.Nom = &clientNom
		}
		if flags.Changed("prenom") {
			patch.Prenom = &clientPrenom
		}
		if flags.Changed("telephone") {
			patch.Telephone = &clientTelephone
		}
		if flags.Changed("email") {
			patch.Email = &clientEmail
		}
		if flags.Changed("points") {
			patch.PointsFidelite = &clientPoints
		}
		if patch.IsEmpty() {
			return fmt.Errorf("nothing to update: pass at least one of --nom, --prenom, --telephone, --email, --points")
		}

		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close(cmd.Context())

		client, err := services.ClientService.UpdateClient(cmd.Context(), args[0], patch)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Client '%s' updated successfully\n", client.ID)
		printClients(cmd.OutOrStdout(), []*domain.Client{client})
		return nil
	},
}

var clientsDeleteCmd = &cobra.Command{
	Use:   "delete <client-id>",
	Short: "Delete a client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		clientID := args[0]

		if !deleteConfirmed {
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				return fmt.Errorf("refusing to delete without confirmation: pass --yes")
			}
			if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Are you sure you want to delete client '%s'? (yes/no): ", clientID)) {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
				return nil
			}
		}

		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close(cmd.Context())

		if _, err := services.ClientService.DeleteClient(cmd.Context(), clientID); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Client '%s' deleted successfully\n", clientID)
		return nil
	},
}

var clientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close(cmd.Context())

		clients, err := services.ClientService.ListClients(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list clients: %w", err)
		}

		if len(clients) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No clients found")
			return nil
		}

		printClients(cmd.OutOrStdout(), clients)
		return nil
	},
}

func printClients(out io.Writer, clients []*domain.Client) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CLIENT ID\tNOM\tPRENOM\tTELEPHONE\tEMAIL\tPOINTS")
	for _, client := range clients {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n",
			client.ID,
			client.Nom,
			client.Prenom,
			client.Telephone,
			client.Email,
			client.PointsFidelite,
		)
	}
	w.Flush()
}

func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	answer, _ := bufio.NewReader(in).ReadString('\n')
	return strings.TrimSpace(strings.ToLower(answer)) == "yes"
}

func addClientFieldFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&clientNom, "nom", "", "last name")
	cmd.Flags().StringVar(&clientPrenom, "prenom", "", "first name")
	cmd.Flags().StringVar(&clientTelephone, "telephone", "", "phone number")
	cmd.Flags().StringVar(&clientEmail, "email", "", "email address")
	cmd.Flags().IntVar(&clientPoints, "points", 0, "loyalty points")
}

func init() {
	rootCmd.AddCommand(clientsCmd)
	clientsCmd.AddCommand(clientsAddCmd)
	clientsCmd.AddCommand(clientsGetCmd)
	clientsCmd.AddCommand(clientsUpdateCmd)
	clientsCmd.AddCommand(clientsDeleteCmd)
	clientsCmd.AddCommand(clientsListCmd)

	addClientFieldFlags(clientsAddCmd)
	addClientFieldFlags(clientsUpdateCmd)
	clientsDeleteCmd.Flags().BoolVarP(&deleteConfirmed, "yes", "y", false, "delete without asking for confirmation")
}
