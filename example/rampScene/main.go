package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/akmonengine/stride"
	"github.com/akmonengine/stride/actor"
	"github.com/akmonengine/stride/collider"
	"github.com/akmonengine/stride/resolve"
	"github.com/go-gl/mathgl/mgl64"
)

// SetupScene creates a floor, a wall, a ramp and an overhead platform
func SetupScene(mirror *resolve.Mirror) (*stride.World, *actor.Character) {
	cfg := resolve.DefaultConfig()
	cfg.Tracer = mirror
	if os.Getenv("STRIDE_DEBUG") != "" {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		cfg.Tracer = resolve.Tracers(mirror, resolve.NewLogTracer(logger))
	}
	// Stop on the top of the ramp
	cfg.Watch = &resolve.Watch{X: 5.5, Z: 0, R: 0.1, Break: func(event resolve.Event) {
		fmt.Printf("  watch: center %v on_slope=%v\n", event.Center, event.Result.OnSlope)
	}}

	world := &stride.World{
		Gravity:     mgl64.Vec3{0, -9.81, 0},
		Config:      cfg,
		SpatialGrid: stride.NewSpatialGrid(2.0, 256),
		Substeps:    2,
		MaxSubstep:  stride.DEFAULT_MAX_SUBSTEP,
		Events:      stride.NewEvents(),
	}

	world.AddCollider(collider.NewBox(mgl64.Vec3{-20, -1, -20}, mgl64.Vec3{20, 0, 20}))
	world.AddCollider(collider.NewRamp(actor.AABB{Min: mgl64.Vec3{2, 0, -2}, Max: mgl64.Vec3{6, 1.5, 2}}, collider.AxisX, false))
	world.AddCollider(collider.NewBox(mgl64.Vec3{6, 0, -2}, mgl64.Vec3{9, 1.5, 2}))
	world.AddCollider(collider.NewBox(mgl64.Vec3{9, 0, -5}, mgl64.Vec3{10, 4, 5}))

	platform := collider.NewBox(mgl64.Vec3{-2, 2.2, -1}, mgl64.Vec3{0, 2.4, 1})
	platform.OneWay = true
	world.AddCollider(platform)

	player := actor.NewCharacter(mgl64.Vec3{-1, 4, 0}, mgl64.Vec3{0.4, 0.9, 0.4})
	player.Id = "player"
	world.AddCharacter(player)

	world.Events.Subscribe(stride.LAND, func(event stride.Event) {
		land := event.(stride.LandEvent)
		fmt.Printf("  LAND %v on %v\n", land.Character.Id, land.Ground.Bounds())
	})
	world.Events.Subscribe(stride.LEAVE_GROUND, func(event stride.Event) {
		fmt.Printf("  LEAVE_GROUND %v\n", event.(stride.LeaveGroundEvent).Character.Id)
	})
	world.Events.Subscribe(stride.COLLISION_ENTER, func(event stride.Event) {
		enter := event.(stride.CollisionEnterEvent)
		fmt.Printf("  COLLISION_ENTER %v with %v\n", enter.Character.Id, enter.Collider.Bounds())
	})
	world.Events.Subscribe(stride.COLLISION_EXIT, func(event stride.Event) {
		fmt.Printf("  COLLISION_EXIT %v\n", event.(stride.CollisionExitEvent).Character.Id)
	})

	return world, player
}

func main() {
	fmt.Println("Ramp scene: drop on a one-way platform, walk off, climb the ramp, hit the wall")
	fmt.Println("==============================================================================")

	mirror := &resolve.Mirror{}
	world, player := SetupScene(mirror)

	const dt float64 = 1.0 / 60.0
	const maxSteps int = 420

	for step := 0; step < maxSteps; step++ {
		if player.OnGround || step > 60 {
			player.Velocity[0] = 2.5
		}

		if err := world.Step(dt); err != nil {
			fmt.Printf("step %d: %v\n", step+1, err)
			os.Exit(1)
		}

		if step%30 == 0 {
			fmt.Printf("--- STEP %d ---\n", step+1)
			fmt.Printf("  Position: %v\n", player.Position)
			fmt.Printf("  Velocity: %v\n", player.Velocity)
			fmt.Printf("  OnGround: %v OnSlope: %v\n", player.OnGround, player.OnSlope)
			fmt.Printf("  Swept: %v\n", mirror.Swept())
			if struck, ok := mirror.Struck(); ok {
				fmt.Printf("  Last struck: %v\n", struck)
			}
		}
	}

	fmt.Println("Done!")
}
