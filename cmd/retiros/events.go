package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/SergioSanchezIglesias/retiros-backend/internal/models"
)

func eventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Manage retreat events",
	}

	cmd.AddCommand(addEventCmd())
	cmd.AddCommand(listEventsCmd())
	cmd.AddCommand(showEventCmd())
	cmd.AddCommand(updateEventCmd())
	cmd.AddCommand(setEventStateCmd())
	cmd.AddCommand(deleteEventCmd())
	cmd.AddCommand(searchEventsCmd())

	return cmd
}

func printEventTable(events []models.Event) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "ID\tNAME\tSTATE\tPARTICIPANTS\tSTART\tLOCATION")
	for _, ev := range events {
		location := ev.Location
		if location == "" {
			location = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
			ev.ID, ev.Name, ev.State, ev.Participants,
			ev.StartDate.Format("2006-01-02"), location)
	}
}

func addEventCmd() *cobra.Command {
	var (
		name         string
		description  string
		start        string
		end          string
		location     string
		participants int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new event (starts in planning)",
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := parseDateTime(start)
			if err != nil {
				return err
			}
			endDate, err := parseDateTime(end)
			if err != nil {
				return err
			}

			gw, err := initGateway()
			if err != nil {
				return err
			}

			event, err := gw.Events.CreateEvent(name, description, startDate, endDate, location, participants)
			if err != nil {
				return err
			}

			fmt.Printf("Created event %s (%s, %s)\n", event.ID, event.Name, event.State)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "event name")
	cmd.Flags().StringVarP(&description, "description", "d", "", "event description")
	cmd.Flags().StringVar(&start, "start", "", "start date (YYYY-MM-DD or YYYY-MM-DD HH:MM:SS)")
	cmd.Flags().StringVar(&end, "end", "", "end date (YYYY-MM-DD or YYYY-MM-DD HH:MM:SS)")
	cmd.Flags().StringVarP(&location, "location", "l", "", "event location")
	cmd.Flags().IntVarP(&participants, "participants", "p", 0, "number of participants")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	_ = cmd.MarkFlagRequired("participants")

	return cmd
}

func listEventsCmd() *cobra.Command {
	var state string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, err := initGateway()
			if err != nil {
				return err
			}

			var events []models.Event
			if state != "" {
				events, err = gw.Events.GetEventsByState(models.EventState(state))
			} else {
				events, err = gw.Events.GetEvents()
			}
			if err != nil {
				return err
			}

			if len(events) == 0 {
				fmt.Println("No events found.")
				return nil
			}

			printEventTable(events)
			return nil
		},
	}

	cmd.Flags().StringVarP(&state, "state", "s", "", "filter by state (planning, active, finished)")

	return cmd
}

func showEventCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, err := initGateway()
			if err != nil {
				return err
			}

			event, err := gw.Events.GetEventByID(args[0])
			if err != nil {
				return err
			}

			fmt.Printf("ID:           %s\n", event.ID)
			fmt.Printf("Name:         %s\n", event.Name)
			fmt.Printf("State:        %s\n", event.State)
			fmt.Printf("Participants: %d\n", event.Participants)
			fmt.Printf("Start:        %s\n", event.StartDate.Format("2006-01-02 15:04:05"))
			fmt.Printf("End:          %s\n", event.EndDate.Format("2006-01-02 15:04:05"))
			if event.Location != "" {
				fmt.Printf("Location:     %s\n", event.Location)
			}
			if event.Description != "" {
				fmt.Printf("Description:  %s\n", event.Description)
			}
			fmt.Printf("Created:      %s\n", event.CreatedAt.Format("2006-01-02 15:04:05"))
			fmt.Printf("Updated:      %s\n", event.UpdatedAt.Format("2006-01-02 15:04:05"))
			return nil
		},
	}
}

func updateEventCmd() *cobra.Command {
	var (
		name         string
		description  string
		start        string
		end          string
		location     string
		participants int
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, err := initGateway()
			if err != nil {
				return err
			}

			// Unset flags keep their current values.
			current, err := gw.Events.GetEventByID(args[0])
			if err != nil {
				return err
			}

			startDate := current.StartDate
			if start != "" {
				if startDate, err = parseDateTime(start); err != nil {
					return err
				}
			}
			endDate := current.EndDate
			if end != "" {
				if endDate, err = parseDateTime(end); err != nil {
					return err
				}
			}
			if name == "" {
				name = current.Name
			}
			if !cmd.Flags().Changed("description") {
				description = current.Description
			}
			if !cmd.Flags().Changed("location") {
				location = current.Location
			}
			if !cmd.Flags().Changed("participants") {
				participants = current.Participants
			}

			event, err := gw.Events.UpdateEvent(args[0], name, description, startDate, endDate, location, participants)
			if err != nil {
				return err
			}

			fmt.Printf("Updated event %s (%s)\n", event.ID, event.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "new event name")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new event description")
	cmd.Flags().StringVar(&start, "start", "", "new start date")
	cmd.Flags().StringVar(&end, "end", "", "new end date")
	cmd.Flags().StringVarP(&location, "location", "l", "", "new event location")
	cmd.Flags().IntVarP(&participants, "participants", "p", 0, "new number of participants")

	return cmd
}

func setEventStateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "state <id> <planning|active|finished>",
		Short: "Change an event's lifecycle state",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, err := initGateway()
			if err != nil {
				return err
			}

			event, err := gw.Events.SetEventState(args[0], models.EventState(args[1]))
			if err != nil {
				return err
			}

			fmt.Printf("Event %s is now %s\n", event.Name, event.State)
			return nil
		},
	}
}

func deleteEventCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an event and all its transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, err := initGateway()
			if err != nil {
				return err
			}

			event, err := gw.Events.GetEventByID(args[0])
			if err != nil {
				return err
			}

			if !force {
				fmt.Printf("This will delete %q and every transaction recorded against it.\n", event.Name)
				fmt.Println("Use --force to confirm.")
				return nil
			}

			if err := gw.Events.DeleteEvent(args[0]); err != nil {
				return err
			}

			fmt.Println("Event deleted.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "confirm deletion without prompting")

	return cmd
}

func searchEventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search events by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, err := initGateway()
			if err != nil {
				return err
			}

			events, err := gw.Events.SearchEventsByName(args[0])
			if err != nil {
				return err
			}

			if len(events) == 0 {
				fmt.Println("No events matched.")
				return nil
			}

			printEventTable(events)
			return nil
		},
	}
}
