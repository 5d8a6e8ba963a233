package testbed

const vertexShaderSource = `
#version 410 core

layout(location = 0) in vec3 position;
in vec4 colour;

uniform mat4 projection;
uniform mat4 view;
uniform mat4 model;

out vec4 fragColour;

void main() {
	fragColour = colour;
	gl_Position = projection * view * model * vec4(position, 1.0);
}
`

const fragmentShaderSource = `
#version 410 core

in vec4 fragColour;

out vec4 outColour;

void main() {
	outColour = fragColour;
}
`
