// Package poster renders generative posters from an emotion vector.
//
// A poster is two layers composited over a dark background: a continuous
// aura field computed per pixel, and a jittered rectangle grid whose
// density follows Transformation and Calm. The style mode sets the weight
// of each layer through domain.BlendWeights. Rendering is a pure function
// of its inputs; all randomness comes from the seed argument.
package poster
