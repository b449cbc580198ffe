package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/model3d/model3d"
	"github.com/unixpickle/rgb-tri/rgbt"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

func main() {
	var icosphereLevel int
	var level int
	var schemeName string
	flag.IntVar(&icosphereLevel, "icosphere-level", 0,
		"number of subdivisions of the base icosphere")
	flag.IntVar(&level, "level", 2, "level to refine every edge to")
	flag.StringVar(&schemeName, "scheme", "butterfly", "vertex positions: butterfly or loop")
	flag.Parse()

	if len(flag.Args()) != 0 {
		fmt.Fprintln(os.Stderr, "Usage: rgb_info [flags]")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
		os.Exit(1)
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

	log.Println("Building triangulation...")
	tri, err := rgbt.NewTriangulation(
		model3d.NewMeshIcosphere(model3d.Origin, 1, icosphereLevel),
		rgbt.WithScheme(scheme),
	)
	essentials.Must(err)

	log.Println("Refining...")
	config := rgbt.DefaultRefinementConfig()
	config.MinEdgeLevel = level
	config.MaxEdgeLevelInBox = level
	config.MaxTriangles = tri.NumFaces() << uint(2*level)
	refiner := rgbt.NewRefiner(tri, config)
	refiner.Start(false, false)

	log.Println("Computing statistics...")
	faces := tri.FaceIndices()
	keys := make([]faceKey, len(faces))
	edgeLengths := make([]float64, len(faces))
	essentials.ConcurrentMap(0, len(faces), func(i int) {
		face := tri.Face(faces[i])
		keys[i] = faceKey{Color: face.Color(), Level: face.Level()}
		for j := 0; j < 3; j++ {
			p1 := face.Vertex(j).Position()
			p2 := face.Vertex((j + 1) % 3).Position()
			edgeLengths[i] = max(edgeLengths[i], p1.Dist(p2))
		}
	})
	counts := map[faceKey]int{}
	for _, k := range keys {
		counts[k]++
	}
	sortedKeys := maps.Keys(counts)
	slices.SortFunc(sortedKeys, func(k1, k2 faceKey) bool {
		if k1.Level != k2.Level {
			return k1.Level < k2.Level
		}
		return k1.Color < k2.Color
	})

	var longest float64
	for _, l := range edgeLengths {
		longest = max(longest, l)
	}

	fmt.Println("Scheme:", tri.Scheme().Name())
	fmt.Println("Steps:", refiner.Steps())
	fmt.Println("Faces:", tri.NumFaces())
	fmt.Println("Vertices:", tri.NumVertices())
	fmt.Printf("Longest edge: %f\n", longest)
	for _, k := range sortedKeys {
		fmt.Printf("Level %d %s: %d\n", k.Level, k.Color, counts[k])
	}
	if err := tri.Validate(); err != nil {
		essentials.Die("invalid triangulation:", err)
	}
}

type faceKey struct {
	Color rgbt.FaceColor
	Level int
}
