// Package sketch turns hand-placed knots into smooth strokes, as used for
// authoring the side view of a floral axis or style.
/*

A stroke is an open path of 2D knots (x, height). The knots are connected
by cubic Bézier segments whose control points are found by John Hobby's
spline algorithm, the one MetaFont and MetaPost use for paths like

   (0,0)..(0.5,3)..tension 1.4..(0,6)

Hobby splines pass through every knot and avoid the overshoot of ordinary
interpolating splines, which makes them well suited for sketching organic
shapes from a handful of points. The primary source of information is:

   Smooth, Easy to Compute Interpolating Splines -- John D. Hobby
   Computer Science Dept. Stanford University
   Report No. STAN-CS-85-1047, Jan 1985

Usage

Clients build a skeleton stroke with a builder:

   stroke := Nullstroke().Knot(Pt(0,0)).Curve().Knot(Pt(0.5,3)).
      TensionCurve(1.4, 1.4).Knot(Pt(0,6)).End()

and then let the package find the control points:

   controls, err := FindControls(stroke)

A stroke may be sampled into a point sequence, or lifted into space by
package reconstruct and wrapped into an axis curve:

   ax, err := stroke.Axis(16)

Knots with a curl different from 1, or with an explicit direction, break a
stroke into independently solved segments. Cyclic paths are not supported,
floral axes are always open.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package sketch
