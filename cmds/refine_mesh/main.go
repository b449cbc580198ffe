package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"time"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/model3d/model3d"
	"github.com/unixpickle/rgb-tri/rgbt"
)

func main() {
	var inputPath string
	var icosphereLevel int
	var schemeName string
	var maxTriangles int
	var maxEdgeLength float64
	var maxEdgeLengthInBox float64
	var minEdgeLevel int
	var maxEdgeLevelInBox int
	var boxMin flagCoord
	var boxMax flagCoord
	var keepBorder bool
	var simple bool
	var delay time.Duration
	var verbose bool
	flag.StringVar(&inputPath, "input", "", "path to input STL (default is an icosphere)")
	flag.IntVar(&icosphereLevel, "icosphere-level", 1,
		"number of subdivisions of the icosphere used without -input")
	flag.StringVar(&schemeName, "scheme", "butterfly", "vertex positions: butterfly or loop")
	flag.IntVar(&maxTriangles, "max-triangles", 100000, "maximum number of triangles")
	flag.Float64Var(&maxEdgeLength, "max-edge-length", math.Inf(1),
		"longest edge allowed outside of the box")
	flag.Float64Var(&maxEdgeLengthInBox, "max-edge-length-in-box", math.Inf(1),
		"longest edge allowed inside of the box")
	flag.IntVar(&minEdgeLevel, "min-edge-level", 1, "level every edge is refined to")
	flag.IntVar(&maxEdgeLevelInBox, "max-edge-level-in-box", 4,
		"maximum level of edges refined by length inside of the box")
	flag.Var(&boxMin, "box-min", "minimum corner of the box, as x,y,z")
	flag.Var(&boxMax, "box-max", "maximum corner of the box, as x,y,z")
	flag.BoolVar(&keepBorder, "keep-border", false, "never remove border vertices")
	flag.BoolVar(&simple, "simple", false, "coarsen everything before refining")
	flag.DurationVar(&delay, "delay", 0, "pause between steps")
	flag.BoolVar(&verbose, "verbose", false, "log refinement details")
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: refine_mesh [flags] <output.stl>")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
		os.Exit(1)
	}
	outputPath := args[0]

	if verbose {
		rgbt.SetLogger(slog.Default())
	}

	var scheme rgbt.Scheme
	switch schemeName {
	case "butterfly":
		scheme = rgbt.NewButterflyScheme()
	case "loop":
		scheme = rgbt.NewLoopScheme()
	default:
		essentials.Die("unknown scheme: " + schemeName)
	}

	var inputMesh *model3d.Mesh
	if inputPath != "" {
		log.Println("Loading mesh...")
		f, err := os.Open(inputPath)
		essentials.Must(err)
		inputTris, err := model3d.ReadSTL(f)
		f.Close()
		essentials.Must(err)
		inputMesh = model3d.NewMeshTriangles(inputTris)
	} else {
		log.Println("Creating icosphere...")
		inputMesh = model3d.NewMeshIcosphere(model3d.Origin, 1, icosphereLevel)
	}

	log.Println("Building triangulation...")
	tri, err := rgbt.NewTriangulation(inputMesh, rgbt.WithScheme(scheme))
	essentials.Must(err)
	log.Printf(" - %d faces, %d vertices", tri.NumFaces(), tri.NumVertices())

	config := &rgbt.RefinementConfig{
		MaxTriangles:       maxTriangles,
		MaxEdgeLength:      maxEdgeLength,
		MaxEdgeLengthInBox: maxEdgeLengthInBox,
		MinEdgeLevel:       minEdgeLevel,
		MaxEdgeLevelInBox:  maxEdgeLevelInBox,
		KeepBorder:         keepBorder,
	}
	if boxMin.set || boxMax.set {
		if !boxMin.set || !boxMax.set {
			essentials.Die("both -box-min and -box-max are required for a box")
		}
		config.Box = &model3d.Rect{MinVal: boxMin.c, MaxVal: boxMax.c}
	}

	log.Println("Refining...")
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	refiner := rgbt.NewRefiner(tri, config)
	refiner.Start(true, simple)
	if delay > 0 {
		_, err = refiner.RunPaced(ctx, delay, func(step int) {
			log.Printf(" - step %d: %d faces", step, tri.NumFaces())
		})
	} else {
		_, err = refiner.Run(ctx)
	}
	if err != nil {
		log.Printf(" - interrupted: %s", err)
	}
	refiner.Stop()
	refiner.Step()
	log.Printf(" - %d steps, %d faces, %d vertices", refiner.Steps(), tri.NumFaces(),
		tri.NumVertices())

	log.Println("Saving mesh...")
	essentials.Must(tri.Mesh().SaveGroupedSTL(outputPath))
}
