package renderer

const vertexShaderSource = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProjection;

out vec3 vWorldPos;
out vec3 vNormal;
out vec3 vLocal;

void main() {
	vec4 world = uModel * vec4(aPos, 1.0);
	vWorldPos = world.xyz;
	vNormal = mat3(uModel) * aNormal;
	vLocal = aPos;
	gl_Position = uProjection * uView * world;
}
`

const fragmentShaderSource = `
#version 410 core

in vec3 vWorldPos;
in vec3 vNormal;
in vec3 vLocal;

uniform vec3 uColor;
uniform float uAmbient;
uniform int uLightCount;
uniform vec3 uLightPos[4];
uniform float uLightIntensity[4];

uniform int uOverlay;
uniform int uHighlight;
uniform float uHalfWidth;
uniform float uHalfHeight;
uniform int uHasLabel;
uniform sampler2D uLabel;

out vec4 FragColor;

void main() {
	if (uOverlay == 1) {
		float alpha = 0.15;
		bool upper = vLocal.y > 0.0;
		if ((uHighlight == 1 && upper) || (uHighlight == 2 && !upper)) {
			alpha = 0.35;
		}
		// Thin rule between the two links.
		if (abs(vLocal.y) < uHalfHeight * 0.04) {
			alpha = 0.5;
		}
		vec4 plate = vec4(0.0, 0.0, 0.0, alpha);
		if (uHasLabel == 1) {
			vec2 uv = vec2(0.5 + vLocal.x / (2.0 * uHalfWidth), 0.5 - vLocal.y / (2.0 * uHalfHeight));
			vec4 ink = texture(uLabel, uv);
			plate = vec4(mix(plate.rgb, ink.rgb, ink.a), max(plate.a, ink.a));
		}
		FragColor = plate;
		return;
	}

	vec3 n = normalize(vNormal);
	if (!gl_FrontFacing) {
		n = -n;
	}
	float light = uAmbient;
	for (int i = 0; i < uLightCount; i++) {
		vec3 l = normalize(uLightPos[i] - vWorldPos);
		light += uLightIntensity[i] * max(dot(n, l), 0.0);
	}
	FragColor = vec4(uColor * light, 1.0);
}
`
