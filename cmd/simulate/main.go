package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/duncanmcewan/marchlands/internal/config"
	"github.com/duncanmcewan/marchlands/internal/game"
	"github.com/duncanmcewan/marchlands/internal/game/catalog"
	"github.com/duncanmcewan/marchlands/internal/game/resource"
	"github.com/duncanmcewan/marchlands/internal/mapdata"
)

var (
	mapPath     string
	configFile  string
	turns       int
	characterID string
	buildScript []string
	quiet       bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "simulate",
		Short: "Marchlands scripted economy simulation",
		Long: `Runs the county economy for a fixed number of turns with a scripted
build order list and prints a per-turn resource summary. Useful for
balance checks.`,
		Run: runSimulation,
	}

	rootCmd.Flags().StringVarP(&mapPath, "map", "m", "", "Path to map YAML (default from config)")
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to config file")
	rootCmd.Flags().IntVarP(&turns, "turns", "t", 0, "Turns to simulate (default from config)")
	rootCmd.Flags().StringVarP(&characterID, "character", "p", "", "Character to play")
	rootCmd.Flags().StringArrayVarP(&buildScript, "build", "b", nil,
		"Scripted order as county:track, e.g. ASHFORD:MARKET (repeatable, one per turn)")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print the final table")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runSimulation(cmd *cobra.Command, args []string) {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if err := config.Init(configFile); err != nil {
		color.Red("Error loading config: %v", err)
		os.Exit(1)
	}
	cfg := config.Get()
	if mapPath == "" {
		mapPath = cfg.Engine.MapPath
	}
	if turns <= 0 {
		turns = cfg.Simulation.Turns
	}
	if characterID == "" {
		characterID = cfg.Simulation.CharacterID
	}

	data, err := mapdata.Load(mapPath)
	if err != nil {
		color.Red("Error loading map: %v", err)
		os.Exit(1)
	}

	initial := game.NewGameState(data)
	eng := game.NewEngine(initial, data, cfg.StartingStockpile(), nil, log.Logger)
	eng.Dispatch(game.OpenSetup{})

	if characterID == "" && len(initial.Characters) > 0 {
		characterID = initial.Characters[0].ID
	}
	if !eng.Dispatch(game.BeginGame{CharacterID: strings.ToUpper(characterID)}) {
		color.Red("Could not start as character %q", characterID)
		os.Exit(1)
	}

	if !quiet {
		color.Cyan("Simulating %d turns as %s over %q", turns, characterID, mapPath)
	}

	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Turn", "Gold", "Wood", "Stone", "Iron", "Pop", "Orders", "Top line"}),
	)

	for i := 0; i < turns; i++ {
		if i < len(buildScript) {
			applyScripted(eng, buildScript[i])
		}
		eng.Dispatch(game.EndTurn{})
		gs := eng.State()
		if !quiet || i == turns-1 {
			appendRow(table, gs, eng.PendingOrderCount())
		}
		eng.Dispatch(game.CloseTurnReport{})
	}

	_ = table.Render()
	printFinal(eng.State())
}

// applyScripted queues one "COUNTY:TRACK" order; malformed or rejected
// entries are reported and skipped.
func applyScripted(eng *game.Engine, entry string) {
	parts := strings.SplitN(entry, ":", 2)
	if len(parts) != 2 {
		color.Yellow("Skipping malformed build entry %q", entry)
		return
	}
	track, err := catalog.ParseTrack(parts[1])
	if err != nil {
		color.Yellow("Skipping build entry %q: %v", entry, err)
		return
	}
	var cmd game.Command
	if track.IsWarehouse() {
		cmd = game.QueueWarehouseUpgrade{}
	} else {
		cmd = game.QueueUpgrade{CountyID: strings.ToUpper(parts[0]), Track: track}
	}
	if !eng.Dispatch(cmd) {
		color.Yellow("Order %q rejected", entry)
	}
}

func appendRow(table *tablewriter.Table, gs game.GameState, orders int) {
	stock := gs.PlayerStockpile()
	top := ""
	if r := gs.LastTurnReport; r != nil && len(r.Lines) > 0 {
		top = r.Lines[0]
	}
	_ = table.Append([]string{
		fmt.Sprintf("%d", gs.TurnNumber),
		fmt.Sprintf("%d", stock.Get(resource.Gold)),
		fmt.Sprintf("%d", stock.Get(resource.Wood)),
		fmt.Sprintf("%d", stock.Get(resource.Stone)),
		fmt.Sprintf("%d", stock.Get(resource.Iron)),
		fmt.Sprintf("%d", stock.Get(resource.Population)),
		fmt.Sprintf("%d", orders),
		top,
	})
}

func printFinal(gs game.GameState) {
	success := color.New(color.FgGreen)
	success.Printf("\nAfter turn %d: %d counties, warehouse level %d\n",
		gs.TurnNumber, len(gs.OwnedCountyIDs), gs.WarehouseLevel)
	for _, id := range gs.OwnedCountyIDs {
		c := gs.Counties[id]
		levels := make([]string, 0, len(c.Buildings))
		for _, bt := range catalog.BuildingTypes {
			if lvl := c.BuildingLevel(bt); lvl > 0 {
				levels = append(levels, fmt.Sprintf("%s %d", strings.ToLower(string(bt)), lvl))
			}
		}
		fmt.Printf("  %-10s pop %-4d roads %-2d  %s\n", c.Name, c.Population, c.RoadLevel, strings.Join(levels, ", "))
	}
}
