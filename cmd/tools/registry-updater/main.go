// cmd/tools/registry-updater/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"scriptgen-workers/pkg/registry"
)

const defaultPath = "configs/activity-registry.json"

func main() {
	addCmd := flag.NewFlagSet("add", flag.ExitOnError)
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	updateCmd := flag.NewFlagSet("update", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)

	addPath := addCmd.String("path", defaultPath, "Path to registry file")
	idAdd := addCmd.String("id", "", "Activity ID (e.g., trend-scout)")
	displayName := addCmd.String("displayName", "", "Display Name (e.g., Trend Scout)")
	description := addCmd.String("description", "", "Description")
	category := addCmd.String("category", "", "Category (script-generation, agents, library)")

	exportPath := exportCmd.String("path", defaultPath, "Path to write the registry file")

	updatePath := updateCmd.String("path", defaultPath, "Path to registry file")
	idUpdate := updateCmd.String("id", "", "Activity ID to update")
	field := updateCmd.String("field", "", "Field to update (status, version, timeout, retries, description)")
	value := updateCmd.String("value", "", "New value for the field")

	validatePath := validateCmd.String("path", defaultPath, "Path to registry file")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add":
		addCmd.Parse(os.Args[2:])
		if *idAdd == "" || *displayName == "" || *description == "" || *category == "" {
			fmt.Println("Error: id, displayName, description, and category are required for add.")
			addCmd.Usage()
			os.Exit(1)
		}
		activity := registry.Activity{
			ID:                   *idAdd,
			DisplayName:          *displayName,
			Description:          *description,
			Category:             *category,
			Version:              "1.0.0",
			TaskType:             *idAdd,
			ImplementationStatus: "planned",
			InputSchema:          map[string]interface{}{"type": "object", "properties": map[string]interface{}{}},
			OutputSchema:         map[string]interface{}{"type": "object", "properties": map[string]interface{}{}},
			ErrorCodes:           []string{"INVALID_INPUT"},
			Timeout:              "30s",
			Workflows:            []string{},
			Tags:                 []string{},
		}
		if err := addActivity(*addPath, activity); err != nil {
			fmt.Printf("Error adding activity: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Added activity: %s\n", *idAdd)

	case "export":
		exportCmd.Parse(os.Args[2:])
		if err := exportRegistry(*exportPath); err != nil {
			fmt.Printf("Error exporting registry: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", *exportPath)

	case "update":
		updateCmd.Parse(os.Args[2:])
		if *idUpdate == "" || *field == "" || *value == "" {
			fmt.Println("Error: id, field, and value are required for update.")
			updateCmd.Usage()
			os.Exit(1)
		}
		if err := updateActivity(*updatePath, *idUpdate, *field, *value); err != nil {
			fmt.Printf("Error updating activity: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Updated activity %s, field %s to %s\n", *idUpdate, *field, *value)

	case "validate":
		validateCmd.Parse(os.Args[2:])
		if err := validateRegistry(*validatePath); err != nil {
			fmt.Printf("Registry validation failed: %v\n", err)
			os.Exit(1)
		}

	case "help":
		fallthrough
	default:
		help()
	}
}

func exportRegistry(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return registry.SaveRegistry(registry.Builtin(), path)
}

func addActivity(path string, activity registry.Activity) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to load registry: %w", err)
		}
		reg = registry.Builtin()
	}

	if _, exists := reg.Find(activity.TaskType); exists {
		return fmt.Errorf("activity with ID %s already exists", activity.ID)
	}
	reg.Activities = append(reg.Activities, activity)

	if err := reg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return registry.SaveRegistry(reg, path)
}

func updateActivity(path, id, field, value string) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	var activity *registry.Activity
	for i := range reg.Activities {
		if reg.Activities[i].ID == id {
			activity = &reg.Activities[i]
			break
		}
	}
	if activity == nil {
		return fmt.Errorf("activity with ID %s not found", id)
	}

	switch field {
	case "status":
		activity.ImplementationStatus = value
	case "version":
		activity.Version = value
	case "description":
		activity.Description = value
	case "timeout":
		activity.Timeout = value
	case "retries":
		retries, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid retries value: %w", err)
		}
		activity.Retries = retries
	default:
		return fmt.Errorf("unknown field: %s", field)
	}

	if err := reg.Validate(); err != nil {
		return err
	}
	return registry.SaveRegistry(reg, path)
}

// validateRegistry checks the file on its own and against the activities
// the worker manager registers.
func validateRegistry(path string) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}
	if len(reg.Activities) == 0 {
		return fmt.Errorf("registry contains no activities")
	}
	if err := reg.Validate(); err != nil {
		return err
	}

	builtin := registry.Builtin()
	for _, a := range builtin.Activities {
		if _, ok := reg.Find(a.TaskType); !ok {
			return fmt.Errorf("registry is missing implemented activity %s", a.TaskType)
		}
	}
	for _, a := range reg.Activities {
		if _, ok := builtin.Find(a.TaskType); !ok {
			fmt.Printf("warning: %s has no worker implementation\n", a.TaskType)
		}
	}

	fmt.Printf("Registry validation passed. Found %d activities.\n", len(reg.Activities))
	return nil
}

func help() {
	fmt.Println(`
Usage: registry-updater <command> [flags]

Commands:
  add      Add a planned activity to the registry
  export   Write the built-in activity catalogue to a registry file
  update   Update an existing activity's field
  validate Validate the registry file against the implemented workers
  help     Show this help message

Examples:
  registry-updater add -id trend-scout -displayName "Trend Scout" -description "Finds rising product trends" -category agents
  registry-updater export -path configs/activity-registry.json
  registry-updater update -id research-product -field timeout -value 3m
  registry-updater validate -path configs/activity-registry.json

Use 'registry-updater <command> -h' for more information about a command.
`)
}
