package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/annel0/isogame/internal/config"
	"github.com/annel0/isogame/internal/persistence"
	"github.com/annel0/isogame/internal/storage"
	"github.com/annel0/isogame/internal/world"
)

const usage = `worldtool - работа с файлами сохранения мира

Commands:
  generate -out FILE [-config FILE] [-generator simple|noise] [-seed N] [-width N] [-height N]
  inspect  [-schema] FILE
  import   -slots DIR -name NAME FILE
  export   -slots DIR -name NAME -out FILE
  list     -slots DIR
  delete   -slots DIR -name NAME
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "generate":
		err = runGenerate(os.Args[2:])
	case "inspect":
		err = runInspect(os.Args[2:])
	case "import":
		err = runImport(os.Args[2:])
	case "export":
		err = runExport(os.Args[2:])
	case "list":
		err = runList(os.Args[2:])
	case "delete":
		err = runDelete(os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

func runGenerate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	var (
		out        = fs.String("out", "", "Output save file")
		configPath = fs.String("config", "", "YAML config (defaults when empty)")
		generator  = fs.String("generator", "", "Override world generator: simple or noise")
		seed       = fs.Int64("seed", 0, "Override noise seed")
		width      = fs.Int("width", 0, "Override world width")
		height     = fs.Int("height", 0, "Override world height")
	)
	fs.Parse(args)
	if *out == "" {
		return fmt.Errorf("generate: -out is required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *generator != "" {
		cfg.World.Generator = *generator
	}
	if *seed != 0 {
		cfg.World.Seed = *seed
	}
	if *width > 0 {
		cfg.World.WorldWidth = *width
	}
	if *height > 0 {
		cfg.World.WorldHeight = *height
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	w, err := persistence.NewWorldPersistenceService(cfg, world.NewDefaultTilesManager()).
		GenerateWorld(context.Background())
	if err != nil {
		return err
	}
	if err := persistence.WriteSaveFile(*out, w); err != nil {
		return err
	}
	fmt.Printf("✅ %dx%d (%s) → %s\n", w.Width, w.Height, cfg.World.Generator, *out)
	return nil
}

func runInspect(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	schema := fs.Bool("schema", false, "Validate against the save JSON Schema before loading")
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("inspect: expected exactly one save file")
	}
	path := fs.Arg(0)

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if *schema {
		if err := persistence.ValidateSaveSchema(data); err != nil {
			return err
		}
		fmt.Println("✅ schema ok")
	}

	w, err := loadBytes(path, data)
	if err != nil {
		return err
	}
	printWorld(w)
	return nil
}

func runImport(args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	slots := fs.String("slots", "saves", "Slot store directory")
	name := fs.String("name", "", "Slot name")
	fs.Parse(args)
	if fs.NArg() != 1 || *name == "" {
		return fmt.Errorf("import: expected -name and one save file")
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	// В архив попадают только сохранения, которые действительно загружаются
	if _, err := loadBytes(fs.Arg(0), data); err != nil {
		return err
	}

	store, err := storage.NewSlotStore(*slots)
	if err != nil {
		return err
	}
	defer store.Close()

	info, err := store.Put(*name, data)
	if err != nil {
		return err
	}
	fmt.Printf("✅ %s: %d → %d bytes (id=%s)\n", info.Name, info.Size, info.StoredSize, info.ID)
	return nil
}

func runExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	slots := fs.String("slots", "saves", "Slot store directory")
	name := fs.String("name", "", "Slot name")
	out := fs.String("out", "", "Output save file")
	fs.Parse(args)
	if *name == "" || *out == "" {
		return fmt.Errorf("export: -name and -out are required")
	}

	store, err := storage.NewSlotStore(*slots)
	if err != nil {
		return err
	}
	defer store.Close()

	data, _, err := store.Get(*name)
	if err != nil {
		return err
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		return err
	}
	fmt.Printf("✅ %s → %s\n", *name, *out)
	return nil
}

func runList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	slots := fs.String("slots", "saves", "Slot store directory")
	fs.Parse(args)

	store, err := storage.NewSlotStore(*slots)
	if err != nil {
		return err
	}
	defer store.Close()

	infos, err := store.List()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSAVED\tSIZE\tSTORED\tID")
	for _, info := range infos {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n",
			info.Name, info.SavedAt.Format(time.RFC3339), info.Size, info.StoredSize, info.ID)
	}
	return tw.Flush()
}

func runDelete(args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	slots := fs.String("slots", "saves", "Slot store directory")
	name := fs.String("name", "", "Slot name")
	fs.Parse(args)
	if *name == "" {
		return fmt.Errorf("delete: -name is required")
	}

	store, err := storage.NewSlotStore(*slots)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Delete(*name)
}

func loadBytes(name string, data []byte) (*world.GameWorld, error) {
	svc := persistence.NewWorldPersistenceService(config.Default(), world.NewDefaultTilesManager())
	return svc.LoadFromReader(context.Background(), persistence.NewJSONStorageFromBytes(name, data))
}

func printWorld(w *world.GameWorld) {
	terrains := make(map[string]int)
	decorations := make(map[string]int)
	resources := make(map[string]int)
	var volume uint64
	for _, tile := range w.Tiles() {
		terrains[tile.Terrain().Name]++
		if tile.Decoration != nil {
			decorations[tile.Decoration.Name]++
		}
		if tile.Resource != nil {
			resources[tile.Resource.Name]++
			volume += uint64(tile.Resource.Volume())
		}
	}

	cam := w.Camera()
	fmt.Printf("World %dx%d (%d tiles)\n", w.Width, w.Height, len(w.Tiles()))
	fmt.Printf("Camera offset=(%.2f, %.2f) target=(%.2f, %.2f) rotation=%.2f zoom=%.2f\n",
		cam.Offset.X, cam.Offset.Y, cam.Target.X, cam.Target.Y, cam.Rotation, cam.Zoom)

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	printCounts(tw, "terrain", terrains)
	printCounts(tw, "decoration", decorations)
	printCounts(tw, "resource", resources)
	tw.Flush()
	fmt.Printf("Total resource volume: %d\n", volume)
}

func printCounts(tw *tabwriter.Writer, kind string, counts map[string]int) {
	for _, name := range sortedNames(counts) {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", kind, name, counts[name])
	}
}

func sortedNames(counts map[string]int) []string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
