// Package render turns DOT text into PNG images.
//
// # Renderers
//
// Two [Renderer] implementations are provided:
//
//   - [Graphviz] renders in-process with go-graphviz (Graphviz compiled to
//     WebAssembly). No external binary is needed.
//   - [Command] shells out to the Graphviz `dot` binary. The IR is written to
//     an intermediate .dot file next to the output, and the renderer's stderr
//     is captured as the failure diagnostic.
//
// # Guarantees
//
// Both renderers block until the image is written or the render fails, and
// both bound the call with a timeout (see [DefaultTimeout]); an expired
// timeout is reported as a render failure with code RENDER_TIMEOUT.
//
// Images are written to a temporary file in the target directory and renamed
// into place, so a failed render never leaves a partial image and never
// clobbers an existing one.
//
//	r := render.NewCommand(render.WithTimeout(30 * time.Second))
//	if err := r.Render(ctx, ir, "docs/entity_relationship.png"); err != nil {
//	    fmt.Println(render.Stderr(err))
//	}
package render
