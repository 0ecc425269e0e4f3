package resumeparser

const sampleResume = `Ana Pérez
Perfil
Analista con experiencia en datos.
Formación Académica
Ingeniería de Sistemas – Universidad Nacional de Ingeniería
2012 - 2017
- Tesis en minería de datos
Maestría en Ciencia de Datos - UPC
2019 – Presente
Experiencia Laboral
Analista de Datos – Acme Corp 2019–2021
- Elaboración de reportes
- Gestión de clientes
Jefe de Proyectos - Beta SAC

2021 - Actual
- Liderazgo de equipo
Practicante - Gamma
Habilidades Técnicas
• Excel (Avanzado)
• SQL
Habilidades Blandas
- Trabajo en equipo
Comunicación efectiva
`
